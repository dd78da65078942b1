package config

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

const (
	FuncNameGetEnv        = "get_env"
	FuncNameGetWorkingDir = "get_working_dir"
)

// NewEvalContext returns the evaluation context config files are decoded with.
// A nil env reads the process environment.
func NewEvalContext(env map[string]string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			FuncNameGetEnv:        getEnvFunc(env),
			FuncNameGetWorkingDir: getWorkingDirFunc(),
		},
	}
}

// getEnvFunc implements `get_env(name, default)`.
func getEnvFunc(env map[string]string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		VarParam: &function.Parameter{Name: "default", Type: cty.String},
		Type:     function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if len(args) > 2 { //nolint:mnd
				return cty.NilVal, function.NewArgErrorf(2, "get_env takes at most 2 arguments, got %d", len(args)) //nolint:mnd
			}

			name := args[0].AsString()

			if val, ok := lookupEnv(env, name); ok {
				return cty.StringVal(val), nil
			}

			if len(args) == 2 { //nolint:mnd
				return args[1], nil
			}

			return cty.StringVal(""), nil
		},
	})
}

func getWorkingDirFunc() function.Function {
	return function.New(&function.Spec{
		Type: function.StaticReturnType(cty.String),
		Impl: func(_ []cty.Value, _ cty.Type) (cty.Value, error) {
			dir, err := os.Getwd()
			if err != nil {
				return cty.NilVal, err
			}

			return cty.StringVal(dir), nil
		},
	})
}

func lookupEnv(env map[string]string, name string) (string, bool) {
	if env == nil {
		return os.LookupEnv(name)
	}

	val, ok := env[name]

	return val, ok
}
