package config

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	var ce *Error
	require.True(t, errors.As(err, &ce), "want *config.Error, got %v", err)
	return ce.Kind
}

func TestAlertOptions_Set(t *testing.T) {
	var o AlertOptions
	require.NoError(t, o.Set("logger", "lioli_file"))
	assert.Equal(t, "lioli_file", o.Logger)
	require.NoError(t, o.Validate())

	err := o.Set("logger", "")
	assert.Equal(t, KindEmptyValue, kindOf(t, err))
	assert.Equal(t, "lioli_file", o.Logger, "rejected value leaves the option unchanged")

	err = o.Set("output", "x")
	assert.Equal(t, KindUnknownOption, kindOf(t, err))
}

func TestAlertOptions_ValidateWithoutLogger(t *testing.T) {
	err := AlertOptions{}.Validate()
	assert.ErrorIs(t, err, &Error{Kind: KindEmptyValue})
}

func TestMappingOptions_Defaults(t *testing.T) {
	o := DefaultMappingOptions()
	assert.Equal(t, MappingOptions{LogFile: "flow.txt"}, o)
	require.NoError(t, o.Validate())
}

func TestMappingOptions_Set(t *testing.T) {
	tests := []struct {
		name    string
		option  string
		value   string
		want    MappingOptions
		errKind *Kind
	}{
		{"cache size", "cache_size", "16", MappingOptions{CacheSize: 16, LogFile: "flow.txt"}, nil},
		{"cache size zero", "cache_size", "0", MappingOptions{LogFile: "flow.txt"}, nil},
		{"cache size max", "cache_size", strconv.Itoa(1<<31 - 1), MappingOptions{CacheSize: 1<<31 - 1, LogFile: "flow.txt"}, nil},
		{"cache size negative", "cache_size", "-1", DefaultMappingOptions(), ptr(KindInvalidValue)},
		{"cache size too big", "cache_size", "2147483648", DefaultMappingOptions(), ptr(KindInvalidValue)},
		{"cache size text", "cache_size", "lots", DefaultMappingOptions(), ptr(KindInvalidValue)},
		{"log file", "log_file", "/tmp/x", MappingOptions{LogFile: "/tmp/x"}, nil},
		{"log file empty", "log_file", "", DefaultMappingOptions(), ptr(KindEmptyValue)},
		{"rotate", "size_rotate", "true", MappingOptions{LogFile: "flow.txt", SizeRotate: true}, nil},
		{"rotate bad", "size_rotate", "sometimes", DefaultMappingOptions(), ptr(KindInvalidValue)},
		{"unknown", "colour", "blue", DefaultMappingOptions(), ptr(KindUnknownOption)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultMappingOptions()
			err := o.Set(tt.option, tt.value)
			if tt.errKind != nil {
				require.Error(t, err)
				assert.Equal(t, *tt.errKind, kindOf(t, err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, o)
		})
	}
}

func TestMappingOptions_Validate(t *testing.T) {
	assert.ErrorIs(t, MappingOptions{}.Validate(), &Error{Kind: KindEmptyValue})
	assert.ErrorIs(t, MappingOptions{LogFile: "f", CacheSize: -3}.Validate(), &Error{Kind: KindInvalidValue})
}

func TestError_Message(t *testing.T) {
	_, parseErr := strconv.ParseBool("maybe")
	err := &Error{Kind: KindInvalidValue, Module: MappingModule, Option: "size_rotate", Value: "maybe", Err: parseErr}
	assert.Equal(t, `config: network_mapping.size_rotate: invalid value "maybe": `+parseErr.Error(), err.Error())
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	err = &Error{Kind: KindUnknownOption, Module: "mystery"}
	assert.Equal(t, "config: mystery: unknown option", err.Error())

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}

func ptr[T any](v T) *T { return &v }
