package settings

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vnmchuo/ai-admin/internal/provider"
)

type Service struct {
	store    Store
	validate *validator.Validate
	tracer   trace.Tracer
}

func NewService(store Store, tracer trace.Tracer) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("supported_model", func(fl validator.FieldLevel) bool {
		return provider.Model(fl.Field().String()).IsSupported()
	})
	return &Service{store: store, validate: v, tracer: tracer}
}

// Get returns the stored record, or Defaults when nothing was saved yet.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	ctx, span := s.tracer.Start(ctx, "settings.get")
	defer span.End()

	stored, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			span.SetAttributes(attribute.Bool("settings.defaults", true))
			return Defaults(), nil
		}
		span.RecordError(err)
		return Settings{}, err
	}
	return *stored, nil
}

// Update sanitizes and validates in, then replaces the stored record with
// it. The saved record is returned.
func (s *Service) Update(ctx context.Context, in Settings) (Settings, error) {
	ctx, span := s.tracer.Start(ctx, "settings.update")
	defer span.End()

	clean := Sanitize(in)
	if err := s.Validate(clean); err != nil {
		return Settings{}, err
	}
	span.SetAttributes(attribute.String("settings.default_model", string(clean.DefaultModel)))

	if err := s.store.Save(ctx, &clean); err != nil {
		span.RecordError(err)
		return Settings{}, err
	}
	return clean, nil
}

// Validate reports field problems wrapped in ErrInvalidSettings.
func (s *Service) Validate(in Settings) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "supported_model":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), supportedModelList()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(msgs, "; "))
}

func supportedModelList() string {
	names := make([]string, len(provider.SupportedModels))
	for i, m := range provider.SupportedModels {
		names[i] = string(m)
	}
	return strings.Join(names, " ")
}
