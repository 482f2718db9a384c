package controllers

import (
	"context"
	"errors"
	"fmt"
	"gmotors/src/db"
	"gmotors/src/lib"
	"gmotors/src/models"
	"gmotors/src/types"
	"gmotors/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var muser models.User
	if err = db.
		Model(&models.User{}).
		Where(&models.User{Username: body.Username}).
		First(&muser).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusUnauthorized, errors.New("invalid username or password")
		}
		log.Printf("error: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not complete login")
	}
	if !muser.CheckPassword(body.Password) {
		return nil, http.StatusUnauthorized, errors.New("invalid username or password")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.User{}).
			Where("id", muser.ID).
			Update("last_active", time.Now()).
			Error
	})
	if err != nil {
		log.Printf("Error logging in user [%d]: %s\n", muser.ID, err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not complete login")
	}

	jwt, err := utils.GenerateJWT(muser.Username, muser.Role, muser.ID)
	if err != nil {
		log.Printf("Error signing token for user [%d]: %s\n", muser.ID, err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not complete login")
	}

	rd := lib.GetRedisClient()
	if _, err := rd.JSONSet(context.Background(), fmt.Sprintf("%d:user", muser.ID), "$", &muser).Result(); err != nil {
		log.Printf("[redis] Error updating user cache: %s\n", err.Error())
	}

	return &jwt, http.StatusOK, nil
}

// AuthLogout drops the cached user entry; the JWT itself expires on its own.
func AuthLogout(ctx *gin.Context) (status int, err error) {
	id := ctx.GetUint("id")
	rd := lib.GetRedisClient()
	if _, err := rd.Del(context.Background(), fmt.Sprintf("%d:user", id)).Result(); err != nil {
		log.Printf("[redis] Error clearing user cache: %s\n", err.Error())
	}
	return http.StatusOK, nil
}

func AuthRegister(ctx *gin.Context) (id *uint, status int, err error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	role := types.ROLE_CUSTOMER
	if body.Role != "" {
		role = types.Role(body.Role)
	}
	if role == types.ROLE_ADMIN {
		return nil, http.StatusForbidden, errors.New("admin accounts cannot be self-registered")
	}

	db := db.GetDb()
	newUser := models.User{
		Username: body.Username,
		Email:    body.Email,
		Role:     role,
	}
	if err := newUser.SetPassword(body.Password); err != nil {
		return nil, http.StatusInternalServerError, errors.New("could not register user")
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.
			Model(&models.User{}).
			Select("id").
			Where("username = ? OR email = ?", body.Username, body.Email).
			First(&existing).
			Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("could not complete transaction")
			}
		}
		if existing.ID > 0 {
			return errors.New("username or email is already registered. Please proceed to Log In")
		}

		if err := tx.Create(&newUser).Error; err != nil {
			log.Printf("Error creating user: %s\n", err.Error())
			return fmt.Errorf("error creating user: %s", body.Username)
		}

		switch role {
		case types.ROLE_TECHNICIAN:
			profile := models.TechnicianProfile{
				UserID:         newUser.ID,
				Name:           body.Name,
				Specialization: body.Specialization,
			}
			if body.DepartmentID > 0 {
				profile.DepartmentID = &body.DepartmentID
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		default:
			profile := models.CustomerProfile{
				UserID:  newUser.ID,
				Name:    body.Name,
				Contact: body.Contact,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &newUser.ID, http.StatusCreated, nil
}
