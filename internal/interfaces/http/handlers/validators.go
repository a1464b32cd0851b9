package handlers

import (
	"github.com/go-playground/validator/v10"

	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/utils"
)

func init() {
	utils.RegisterValidation("notification_type", func(fl validator.FieldLevel) bool {
		_, err := vo.NewNotificationType(fl.Field().String())
		return err == nil
	})
	utils.RegisterValidation("notification_priority", func(fl validator.FieldLevel) bool {
		_, err := vo.NewPriority(fl.Field().String())
		return err == nil
	})
	utils.RegisterValidation("notification_status", func(fl validator.FieldLevel) bool {
		_, err := vo.NewStatus(fl.Field().String())
		return err == nil
	})
}
