package requests

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/domain/persona"
	"github.com/janhq/mirror-server/internal/domain/profile"
)

var registerOnce sync.Once

// RegisterValidators adds the mentor, stage and theme tags to gin's validator.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		for tag, fn := range map[string]validator.Func{
			"mentor": validMentor,
			"stage":  validStage,
			"theme":  validTheme,
		} {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

func validMentor(fl validator.FieldLevel) bool {
	_, ok := persona.Lookup(persona.MentorKey(fl.Field().String()))
	return ok
}

func validStage(fl validator.FieldLevel) bool {
	return meditation.Stage(fl.Field().String()).Valid()
}

func validTheme(fl validator.FieldLevel) bool {
	return profile.Theme(fl.Field().String()).Valid()
}
