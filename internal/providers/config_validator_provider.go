package providers

import (
	"errors"
	"skinwatch/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	if !cv.conf.Channels.Local.Enabled && !cv.conf.Channels.Relay.Enabled {
		return errors.New("at least one notification channel must be enabled")
	}
	return nil
}
