package spec

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spiceai/specs/pkg/validator"
)

type numOptions struct {
	Data         string `mapstructure:"data" validate:"required"`
	Datatype     string `mapstructure:"datatype"`
	Multiplier   string `mapstructure:"multiplier"`
	Unit         string `mapstructure:"unit"`
	Precision    int    `mapstructure:"precision" validate:"gte=0,lte=12"`
	Heading      string `mapstructure:"heading" validate:"excludesall=0123456789"`
	NumDirection string `mapstructure:"numdirection" validate:"omitempty,oneof=upper lower"`
}

type categoryOptions struct {
	Data       string   `mapstructure:"data" validate:"required"`
	Datatype   string   `mapstructure:"datatype"`
	Categories []string `mapstructure:"categories" validate:"required,min=1,unique,dive,label"`
	Indexes    []int    `mapstructure:"indexes" validate:"omitempty,unique"`
}

// Decodes attrs into an options struct and validates it. Unknown attributes
// are rejected.
func decode(datatype Datatype, attrs Attrs, options interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           options,
	})
	if err != nil {
		return &AttributeError{Datatype: datatype, Cause: err}
	}

	if err := decoder.Decode(map[string]interface{}(attrs)); err != nil {
		return &AttributeError{Datatype: datatype, Cause: err}
	}

	if err := validator.ValidateStruct(options); err != nil {
		return &AttributeError{Datatype: datatype, Cause: err}
	}

	return nil
}
