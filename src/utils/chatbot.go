package utils

import (
	"fmt"
	"strings"

	"gmotors/src/db"
	"gmotors/src/models"
)

func containsAny(message string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(message, word) {
			return true
		}
	}
	return false
}

// ChatbotReply answers a free-text question from the canned keyword table,
// pulling live catalog data where it helps.
func ChatbotReply(message string) string {
	message = strings.ToLower(strings.TrimSpace(message))
	switch {
	case containsAny(message, "service", "services", "booking", "book", "appointment"):
		return serviceReply()
	case containsAny(message, "part", "parts", "spare", "component"):
		return partsReply()
	case containsAny(message, "contact", "phone", "address", "location"):
		return "You can reach us at:\nPhone: +91-9876543210\nEmail: info@gauravmotors.com\nLocation: Gaurav Motors Service Center\n\nVisit our contact page for more details."
	case containsAny(message, "about", "company", "who"):
		return "Gaurav Motors is your trusted partner for all automotive needs. We provide comprehensive car services, genuine spare parts, and expert maintenance solutions."
	case containsAny(message, "schedule", "time", "slot"):
		return "To book an appointment:\n1. Choose your preferred service\n2. Select a convenient date and time\n3. Fill in your details\n\nWe offer flexible timing from 9 AM to 6 PM."
	case containsAny(message, "price", "cost", "fee", "charge"):
		return "Our service prices vary based on the type of service and vehicle. Please check our services catalog for detailed pricing or contact us for a custom quote."
	case containsAny(message, "emergency", "urgent", "breakdown", "tow"):
		return "For emergency services or breakdowns, please call our 24/7 helpline: +91-9876543210. We provide roadside assistance and towing services."
	default:
		return "I'm here to help with information about our car services, spare parts, appointments, and more. You can ask me about:\n- Available services and pricing\n- Spare parts availability\n- Booking appointments\n- Contact information\n- Emergency services"
	}
}

func serviceReply() string {
	db := db.GetDb()
	var services []models.CarService
	db.Where(&models.CarService{IsActive: true}).Limit(5).Find(&services)
	if len(services) == 0 {
		return "We offer various car services including maintenance, repairs, and detailing. Please visit our services page for more details."
	}
	var sb strings.Builder
	sb.WriteString("Here are our available services:\n")
	for _, service := range services {
		fmt.Fprintf(&sb, "- %s - Rs.%.2f (%d mins)\n", service.Name, service.Price, service.DurationMinutes)
	}
	sb.WriteString("\nYou can book a service through our website or contact us directly.")
	return sb.String()
}

func partsReply() string {
	db := db.GetDb()
	var categories []models.SparePartCategory
	db.Find(&categories)
	if len(categories) == 0 {
		return "We stock a wide range of genuine spare parts for various car brands. Check our spare parts section."
	}
	var sb strings.Builder
	sb.WriteString("We have spare parts in these categories:\n")
	for _, category := range categories {
		fmt.Fprintf(&sb, "- %s\n", category.Name)
	}
	sb.WriteString("\nBrowse our spare parts catalog on the website.")
	return sb.String()
}
