package catalogpkg

import "github.com/go-playground/validator/v10"

// ValidItemType checks that the field holds a supported marketplace item type.
var ValidItemType validator.Func = func(fl validator.FieldLevel) bool {
	if itemType, ok := fl.Field().Interface().(string); ok {
		return IsSupportedItemType(itemType)
	}

	return false
}

// ValidGameStatus checks that the field holds a valid game moderation status.
var ValidGameStatus validator.Func = func(fl validator.FieldLevel) bool {
	if status, ok := fl.Field().Interface().(string); ok {
		return IsGameStatus(status)
	}

	return false
}
