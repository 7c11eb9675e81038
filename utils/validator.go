package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var looseEmailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var errEmptyBody = errors.New("corps de requête vide")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Nommer les champs comme dans le JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailRegex.MatchString(fl.Field().String())
	})

	return v
}

// ValidationError représente une erreur de validation
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

// Error implémente l'interface error
func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// IsRequired indique que la règle en échec est un champ obligatoire manquant
func (v ValidationError) IsRequired() bool {
	return v.Tag == "required"
}

// ValidateStruct applique les tags `validate` et retourne la première règle en échec
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return ValidationError{
		Field:   fe.Field(),
		Tag:     fe.Tag(),
		Message: messageFor(fe),
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("le champ %s est requis", fe.Field())
	case "loose_email":
		return "format d'email invalide"
	case "min", "max":
		return fmt.Sprintf("le champ %s doit être compris dans les bornes autorisées", fe.Field())
	}
	return fmt.Sprintf("le champ %s est invalide", fe.Field())
}

// NormalizeEmail supprime les espaces et passe l'email en minuscules
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
