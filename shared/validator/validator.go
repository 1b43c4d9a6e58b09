package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/gabriel-vasile/mimetype"
	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerMimetypeValidation(field val.FieldLevel) bool {
	contentType := contentTypeOf(field.Field().Interface())
	if contentType == constant.Empty {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

// contentTypeOf sniffs uploaded files and falls back to the declared part header when the
// content cannot be read. Strings are expected to be data URIs.
func contentTypeOf(value any) string {
	switch typed := value.(type) {
	case multipart.FileHeader:
		if file, err := typed.Open(); err == nil {
			defer file.Close()

			if detected, err := mimetype.DetectReader(file); err == nil && detected.String() != "application/octet-stream" {
				return strings.SplitN(detected.String(), ";", 2)[0]
			}
		}

		return typed.Header.Get(constant.RequestHeaderContentType)
	case string:
		declared, found := strings.CutPrefix(typed, "data:")
		if !found {
			return constant.Empty
		}

		mediaType, _, found := strings.Cut(declared, ";base64,")
		if !found {
			return constant.Empty
		}

		return mediaType
	default:
		return constant.Empty
	}
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	if file, ok := field.Field().Interface().(multipart.FileHeader); ok {
		fileSize = int(file.Size)
	} else if str, ok := field.Field().Interface().(string); ok {
		fileSize = len(str)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// Report json names so messages match the request body the client sent.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	validations := map[string]val.Func{
		"empty":       func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"guest_email": func(fl val.FieldLevel) bool { return IsValidEmail(fl.Field().String()) },
		"guest_phone": func(fl val.FieldLevel) bool { return IsValidPhone(fl.Field().String()) },
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
