package validator_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	RoomID      string `json:"room_id"        validate:"required,uuid"`
	Guests      int    `json:"guests"         validate:"gt=0,lte=10"`
	CheckInDate string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	Status      string `json:"status"         validate:"omitempty,oneof=pending confirmed cancelled"`
	Email       string `json:"email"          validate:"required,email"`
}

func validForm() bookingForm {
	return bookingForm{
		RoomID:      "4f0c3c61-6a4b-4a3e-9a8e-5d1f0c2b7e11",
		Guests:      2,
		CheckInDate: "2026-11-02",
		Email:       "guest@omangrandhotel.com",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*bookingForm)
		message string
	}{
		{name: "valid", mutate: func(*bookingForm) {}},
		{name: "missing room", mutate: func(f *bookingForm) { f.RoomID = "" }, message: "room_id is required"},
		{name: "room is not a uuid", mutate: func(f *bookingForm) { f.RoomID = "R-101" }, message: "room_id must be a valid UUID"},
		{name: "no guests", mutate: func(f *bookingForm) { f.Guests = 0 }, message: "guests must be greater than 0"},
		{name: "too many guests", mutate: func(f *bookingForm) { f.Guests = 11 }, message: "guests must be less than or equal to 10"},
		{name: "bad date", mutate: func(f *bookingForm) { f.CheckInDate = "02/11/2026" }, message: "check_in_date must use the 2006-01-02 format"},
		{name: "unknown status", mutate: func(f *bookingForm) { f.Status = "archived" }, message: "status must be one of pending confirmed cancelled"},
		{name: "bad email", mutate: func(f *bookingForm) { f.Email = "guest" }, message: "email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := validator.ValidateStruct(&form)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.message)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateStruct_FirstErrorWins(t *testing.T) {
	err := validator.ValidateStruct(&bookingForm{Guests: -1, Email: "nope"})

	assert.EqualError(t, err, "room_id is required")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2026-11-02", "datetime=2006-01-02"))
	assert.Error(t, validator.ValidateVar("2026-13-02", "datetime=2006-01-02"))
	assert.NoError(t, validator.ValidateVar(3, "gte=1,lte=10"))
	assert.Error(t, validator.ValidateVar(0, "gte=1,lte=10"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

func TestValidate(t *testing.T) {
	t.Run("decodes and validates", func(t *testing.T) {
		body := `{"room_id":"4f0c3c61-6a4b-4a3e-9a8e-5d1f0c2b7e11","guests":2,"check_in_date":"2026-11-02","email":"a@b.com"}`

		var form bookingForm
		require.NoError(t, validator.Validate(strings.NewReader(body), &form))
		assert.Equal(t, 2, form.Guests)
	})

	t.Run("malformed body", func(t *testing.T) {
		var form bookingForm
		err := validator.Validate(strings.NewReader(`{"guests":}`), &form)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode request body")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("invalid body", func(t *testing.T) {
		var form bookingForm
		assert.EqualError(t, validator.Validate(strings.NewReader(`{}`), &form), "room_id is required")
	})
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected bool
	}{
		{email: "a@b.com", expected: true},
		{email: "guest.name+tag@omangrandhotel.com", expected: true},
		{email: "a@b", expected: false},
		{email: "a b@c.com", expected: false},
		{email: "@b.com", expected: false},
		{email: "a@@b.com", expected: false},
		{email: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, validator.IsValidEmail(tt.email))
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone    string
		expected bool
	}{
		{phone: "+968 1234 5678", expected: true},
		{phone: "(968) 555-0100", expected: true},
		{phone: "12345678", expected: true},
		{phone: "12345", expected: false},
		{phone: "1234567", expected: false},
		{phone: "+968 1234 abcd", expected: false},
		{phone: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.expected, validator.IsValidPhone(tt.phone))
		})
	}
}

type guestContact struct {
	Email string `json:"email" validate:"guest_email"`
	Phone string `json:"phone" validate:"guest_phone"`
}

func TestContactTags(t *testing.T) {
	err := validator.ValidateStruct(&guestContact{Email: "a@b", Phone: "+968 1234 5678"})
	assert.EqualError(t, err, "Please enter a valid email address")

	err = validator.ValidateStruct(&guestContact{Email: "a@b.com", Phone: "12345"})
	assert.EqualError(t, err, "Please enter a valid phone number")

	assert.NoError(t, validator.ValidateStruct(&guestContact{Email: "a@b.com", Phone: "+968 1234 5678"}))
}

type upload struct {
	Image   *multipart.FileHeader `validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
	Encoded string                `validate:"omitempty,mimetypes=image/png"`
}

func formFile(t *testing.T, content []byte, declared string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="room.png"`)
	header.Set("Content-Type", declared)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/v1/rooms", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, request.ParseMultipartForm(1<<20))

	return request.MultipartForm.File["image"][0]
}

func TestUploadValidation(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

	assert.NoError(t, validator.ValidateStruct(&upload{Image: formFile(t, png, "image/png")}))

	// The declared type is ignored when the bytes say otherwise.
	assert.Error(t, validator.ValidateStruct(&upload{Image: formFile(t, []byte("%PDF-1.7\n%\xe2\xe3"), "image/png")}))

	assert.NoError(t, validator.ValidateStruct(&upload{Encoded: "data:image/png;base64,iVBORw0KGgo="}))
	assert.Error(t, validator.ValidateStruct(&upload{Encoded: "data:text/plain;base64,SGk="}))
	assert.Error(t, validator.ValidateStruct(&upload{Encoded: "image/png;base64,iVBORw0KGgo="}))
	assert.NoError(t, validator.ValidateStruct(&upload{}))
}
