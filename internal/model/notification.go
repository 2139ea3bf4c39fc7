package model

import (
	"fmt"
	"strings"
)

type NotificationCategory string

const (
	NotificationCategoryMessage   NotificationCategory = "message"
	NotificationCategoryRDO       NotificationCategory = "rdo"
	NotificationCategoryPayment   NotificationCategory = "payment"
	NotificationCategoryFinancial NotificationCategory = "financial"
	NotificationCategoryInfo      NotificationCategory = "info"
	NotificationCategorySuccess   NotificationCategory = "success"
	NotificationCategoryWarning   NotificationCategory = "warning"
)

// NotificationCategories lists every category in display order.
var NotificationCategories = []NotificationCategory{
	NotificationCategoryMessage,
	NotificationCategoryRDO,
	NotificationCategoryPayment,
	NotificationCategoryFinancial,
	NotificationCategoryInfo,
	NotificationCategorySuccess,
	NotificationCategoryWarning,
}

func ParseNotificationCategory(s string) (NotificationCategory, error) {
	c := NotificationCategory(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case NotificationCategoryMessage,
		NotificationCategoryRDO,
		NotificationCategoryPayment,
		NotificationCategoryFinancial,
		NotificationCategoryInfo,
		NotificationCategorySuccess,
		NotificationCategoryWarning:
		return c, nil
	default:
		return "", fmt.Errorf("unknown notification category %q", s)
	}
}

func (c *NotificationCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseNotificationCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Icon returns the presentation icon for the category.
func (c NotificationCategory) Icon() string {
	switch c {
	case NotificationCategoryMessage:
		return "message-circle"
	case NotificationCategoryRDO:
		return "file-text"
	case NotificationCategoryPayment:
		return "credit-card"
	case NotificationCategoryFinancial:
		return "dollar-sign"
	case NotificationCategoryInfo:
		return "info"
	case NotificationCategorySuccess:
		return "check-circle"
	case NotificationCategoryWarning:
		return "alert-triangle"
	}
	return "bell"
}

// Notification is a dashboard alert. DisplayTime is free text shown as is
// ("5 min ago"), not a clock value.
type Notification struct {
	ID          string               `json:"id"`
	Category    NotificationCategory `json:"category"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	DisplayTime string               `json:"display_time"`
	Read        bool                 `json:"read"`
	Icon        string               `json:"icon"`
}
