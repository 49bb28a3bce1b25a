package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// maxFormBytes bounds a hotel or room form, images included.
const maxFormBytes = 20 << 20

// maxFieldBytes bounds one non-file multipart field.
const maxFieldBytes = 64 << 10

var (
	errFormTooLarge   = errors.New("form too large")
	errFormMediaType  = errors.New("unsupported media type")
	errFormMalformed  = errors.New("malformed form")
	errFieldNotNumber = errors.New("not a number")
)

// ownerForm is a hotel or room form read in full so it can be checked and
// then forwarded to the backend byte for byte, images included.
type ownerForm struct {
	contentType string
	raw         []byte
	multipart   bool
	fields      url.Values // non-file multipart fields
}

func readOwnerForm(r *http.Request) (*ownerForm, error) {
	ct := r.Header.Get(echo.HeaderContentType)
	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, errFormMediaType
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes+1))
	if err != nil {
		return nil, errFormMalformed
	}
	if len(raw) > maxFormBytes {
		return nil, errFormTooLarge
	}

	f := &ownerForm{contentType: ct, raw: raw}
	switch mediaType {
	case echo.MIMEApplicationJSON:
		return f, nil
	case echo.MIMEMultipartForm:
		f.multipart = true
		f.fields = url.Values{}
		mr := multipart.NewReader(bytes.NewReader(raw), params["boundary"])
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				return f, nil
			}
			if err != nil {
				return nil, errFormMalformed
			}
			if part.FileName() != "" {
				continue
			}
			v, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				return nil, errFormMalformed
			}
			f.fields.Add(part.FormName(), string(v))
		}
	}
	return nil, errFormMediaType
}

// decode fills dst from the form: JSON bodies are unmarshalled, multipart
// fields are mapped through fill.
func (f *ownerForm) decode(dst any, fill func(get func(names ...string) string) error) error {
	if !f.multipart {
		if err := json.Unmarshal(f.raw, dst); err != nil {
			return errFormMalformed
		}
		return nil
	}
	return fill(f.field)
}

// field returns the first non-empty value among names.  Browsers send
// nested fields as "price[base]", other clients as "price.base".
func (f *ownerForm) field(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(f.fields.Get(n)); v != "" {
			return v
		}
	}
	return ""
}

// has reports whether any of names was sent.  JSON bodies are walked by
// dotted path; a path ending on an object does not count.
func (f *ownerForm) has(names ...string) bool {
	if f.multipart {
		return f.field(names...) != ""
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(f.raw, &doc); err != nil {
		return false
	}
	for _, n := range names {
		if strings.Contains(n, "[") {
			continue
		}
		if jsonLeaf(doc, strings.Split(n, ".")) {
			return true
		}
	}
	return false
}

func jsonLeaf(doc map[string]json.RawMessage, path []string) bool {
	v, ok := doc[path[0]]
	if !ok {
		return false
	}
	v = bytes.TrimSpace(v)
	if len(path) == 1 {
		return len(v) > 0 && v[0] != '{' && !bytes.Equal(v, []byte("null"))
	}
	var sub map[string]json.RawMessage
	if err := json.Unmarshal(v, &sub); err != nil {
		return false
	}
	return jsonLeaf(sub, path[1:])
}

func (f *ownerForm) body() io.Reader { return bytes.NewReader(f.raw) }

// formInt parses an optional integer field.
func formInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errFieldNotNumber
	}
	return n, nil
}

func formFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errFieldNotNumber
	}
	return n, nil
}

// formError writes the reply for a form that could not be read.
func formError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errFormTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "upload too large"})
	case errors.Is(err, errFormMediaType):
		return c.JSON(http.StatusUnsupportedMediaType, echo.Map{"error": "expected JSON or multipart/form-data"})
	case errors.Is(err, errFieldNotNumber):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "numeric field is not a number"})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
}
