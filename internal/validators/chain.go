// Package validators holds the per-route request validators. Each route gets
// a Chain: bind the request, normalise it, check struct tags, run pure
// cross-field rules, then resolve store references concurrently and compare
// them against the request.
package validators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"etalase/internal/apperror"
	"etalase/internal/images"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// Messages maps "field.tag" or "field" to the message reported to clients.
// "field.type" is used when the body carries a value of the wrong JSON type.
type Messages map[string]string

// Rule is a pure check over the request.
type Rule[T any] func(in *T) []apperror.FieldError

// Resolver loads what a check needs from the store and returns the pure rule
// that compares it with the request. A nil rule means nothing to check.
type Resolver[T any] func(ctx context.Context, in *T) (Rule[T], error)

type resolver[T any] struct {
	field string
	fn    Resolver[T]
}

// Chain is the ordered rule list of one endpoint.
type Chain[T any] struct {
	validate  *validator.Validate
	messages  Messages
	prepare   []func(*T)
	rules     []Rule[T]
	resolvers []resolver[T]
	params    map[string]bool
}

// NewValidate returns a validator that reports fields by their params or
// json names.
func NewValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("params"); name != "" {
			return name
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// New creates an empty chain for T.
func New[T any](v *validator.Validate, messages Messages) *Chain[T] {
	return &Chain[T]{
		validate: v,
		messages: messages,
		params:   paramFields(reflect.TypeOf((*T)(nil)).Elem()),
	}
}

// Prepare adds a normalisation step run before any check.
func (ch *Chain[T]) Prepare(fn func(in *T)) *Chain[T] {
	ch.prepare = append(ch.prepare, fn)
	return ch
}

// Rule adds a synchronous cross-field rule.
func (ch *Chain[T]) Rule(r Rule[T]) *Chain[T] {
	ch.rules = append(ch.rules, r)
	return ch
}

// Resolve adds a store lookup guarding field. The lookup is skipped when an
// earlier step already rejected field.
func (ch *Chain[T]) Resolve(field string, fn Resolver[T]) *Chain[T] {
	ch.resolvers = append(ch.resolvers, resolver[T]{field: field, fn: fn})
	return ch
}

// Validate runs every step against in. A non-nil error means a lookup
// failed and the request cannot be judged.
func (ch *Chain[T]) Validate(ctx context.Context, in *T) ([]apperror.FieldError, error) {
	for _, fn := range ch.prepare {
		fn(in)
	}

	errs := ch.static(in)
	for _, r := range ch.rules {
		errs = append(errs, r(in)...)
	}

	failed := make(map[string]bool, len(errs))
	for _, e := range errs {
		failed[e.Path] = true
	}

	compare := make([]Rule[T], len(ch.resolvers))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ch.resolvers {
		if r.field != "" && failed[r.field] {
			continue
		}
		g.Go(func() error {
			rule, err := r.fn(gctx, in)
			if err != nil {
				return err
			}
			compare[i] = rule
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, rule := range compare {
		if rule != nil {
			errs = append(errs, rule(in)...)
		}
	}
	for i := range errs {
		if errs[i].Location == "" {
			errs[i].Location = ch.location(errs[i].Path)
		}
	}
	return errs, nil
}

var indexSuffix = regexp.MustCompile(`\[\d+\]$`)

// formConversion matches the form decoder's conversion error, whose type is
// internal to Fiber: `error converting value for "price"` or
// `error converting value for index 1 of "images"`.
var formConversion = regexp.MustCompile(`error converting value for (?:index \d+ of )?"([^"]+)"`)

func (ch *Chain[T]) static(in *T) []apperror.FieldError {
	err := ch.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperror.FieldError{{Type: "field", Message: err.Error()}}
	}

	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := indexSuffix.ReplaceAllString(fe.Field(), "")
		out = append(out, apperror.FieldError{
			Type:    "field",
			Value:   fe.Value(),
			Message: ch.message(field, fe.Tag()),
			Path:    field,
		})
	}
	return out
}

func (ch *Chain[T]) message(field, tag string) string {
	if msg, ok := ch.messages[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := ch.messages[field]; ok {
		return msg
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", field, tag)
}

func (ch *Chain[T]) location(field string) string {
	if ch.params[field] {
		return "params"
	}
	return "body"
}

// FieldErr builds a body field error.
func FieldErr(field string, value any, msg string) apperror.FieldError {
	return apperror.FieldError{Type: "field", Value: value, Message: msg, Path: field}
}

// Gate turns collected field errors into a single 400, or nil when there are
// none.
func Gate(errs []apperror.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return apperror.Validation(errs)
}

type inputKey struct{}

// Handler binds, validates and gates the request. On success the validated
// input is available to the next handler through Input.
func (ch *Chain[T]) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := new(T)
		if err := ch.bind(c, in); err != nil {
			return err
		}
		errs, err := ch.Validate(c.UserContext(), in)
		if err != nil {
			return err
		}
		if err := Gate(errs); err != nil {
			return err
		}
		c.Locals(inputKey{}, in)
		return c.Next()
	}
}

// Input returns the input validated by the chain in front of the handler.
func Input[T any](c *fiber.Ctx) *T {
	in, _ := c.Locals(inputKey{}).(*T)
	return in
}

type uploadsSetter interface {
	SetUploads(map[string][]string)
}

func (ch *Chain[T]) bind(c *fiber.Ctx, in *T) error {
	multipart := strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
	if multipart || len(c.Body()) > 0 {
		if err := c.BodyParser(in); err != nil {
			return ch.bodyError(err)
		}
	}
	if err := c.ParamsParser(in); err != nil {
		return apperror.BadRequest("Invalid path parameters")
	}
	if s, ok := any(in).(uploadsSetter); ok {
		if uploads := images.Uploaded(c); len(uploads) > 0 {
			s.SetUploads(uploads)
		}
	}
	return nil
}

func (ch *Chain[T]) bodyError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := strings.SplitN(typeErr.Field, ".", 2)[0]
		return apperror.Validation([]apperror.FieldError{{
			Type:     "field",
			Value:    typeErr.Value,
			Message:  ch.message(field, "type"),
			Path:     field,
			Location: "body",
		}})
	}
	if m := formConversion.FindStringSubmatch(err.Error()); m != nil {
		field := strings.SplitN(m[1], ".", 2)[0]
		return apperror.Validation([]apperror.FieldError{{
			Type:     "field",
			Message:  ch.message(field, "type"),
			Path:     field,
			Location: "body",
		}})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	return apperror.BadRequest("Invalid request body")
}

func paramFields(t reflect.Type) map[string]bool {
	out := map[string]bool{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		if name := t.Field(i).Tag.Get("params"); name != "" {
			out[name] = true
		}
	}
	return out
}
