package completion

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/NikitaCOEUR/tabctx/internal/derrors"
)

// maxRangeSuggestions bounds @range output
const maxRangeSuggestions = 1000

// RangeHandler suggests the integers of a range.
// The primary config is "min-max" or "max" (from 0), e.g. "@range:1-10" or
// "@range:-5-5".
// The step option sets the increment: "@range:0-100,step=10".
func RangeHandler(ctx *Context) ([]Suggestion, error) {
	primary, ok := ctx.PrimaryConfig()
	if !ok {
		return nil, derrors.NewValidationError("@range", "range requires a config like 1-10", nil)
	}

	lo, hi, err := parseRange(primary)
	if err != nil {
		return nil, derrors.NewValidationError("@range", "invalid range", err)
	}

	step := 1
	if raw, ok := ctx.Config("step"); ok {
		step, err = strconv.Atoi(raw)
		if err != nil || step <= 0 {
			return nil, derrors.NewValidationError("@range", fmt.Sprintf("invalid step %q", raw), err)
		}
	}

	// span is computed unsigned so bounds near the int limits do not wrap
	count := uint64(maxRangeSuggestions)
	if steps := (uint64(hi) - uint64(lo)) / uint64(step); steps < count {
		count = steps + 1
	}

	out := make([]Suggestion, 0, count)
	for i, v := uint64(0), lo; i < count; i, v = i+1, v+step {
		out = append(out, Suggestion{Value: strconv.Itoa(v)})
	}
	return out, nil
}

// parseRange reads "min-max" or "max". Either bound may carry a leading minus sign.
func parseRange(s string) (int, int, error) {
	lo, hi := "0", s
	unsigned := strings.TrimPrefix(s, "-")
	if sep := strings.Index(unsigned, "-"); sep >= 0 {
		sep += len(s) - len(unsigned)
		lo, hi = s[:sep], s[sep+1:]
	}
	lower, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, err
	}
	upper, err := strconv.Atoi(hi)
	if err != nil {
		return 0, 0, err
	}
	if lower > upper {
		return 0, 0, fmt.Errorf("min %d is greater than max %d", lower, upper)
	}
	return lower, upper, nil
}

// BooleanHandler suggests true and false
func BooleanHandler(_ *Context) ([]Suggestion, error) {
	return suggestionsOf("true", "false"), nil
}

// NothingHandler suggests nothing
func NothingHandler(_ *Context) ([]Suggestion, error) {
	return []Suggestion{}, nil
}

// AboveHandler suggests the count integers following an int argument that
// was already typed. Without a param option the first int parameter is used;
// "@above:param=2,count=3" reads the parameter declared at index 2.
func AboveHandler(ctx *Context) ([]Suggestion, error) {
	count := 5
	if raw, ok := ctx.Config("count"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, derrors.NewValidationError("@above", fmt.Sprintf("invalid count %q", raw), err)
		}
		count = n
	}

	var base int
	var err error
	if raw, ok := ctx.Config("param"); ok {
		idx, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, derrors.NewValidationError("@above", fmt.Sprintf("invalid param index %q", raw), convErr)
		}
		base, err = ValueAt[int](ctx, idx)
	} else {
		base, err = Value[int](ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, Suggestion{Value: strconv.Itoa(base + i)})
	}
	return out, nil
}

// templateData is what @template templates render against
type templateData struct {
	Input   string
	Primary string
	Options map[string]string
	Args    []string
	Issuer  string
}

// TemplateHandler renders named text/templates, with sprig functions, into
// suggestions: one per non-empty output line. The primary config names the
// template, e.g. "@template:branches,prefix=feat/".
func TemplateHandler(sources map[string]string) (Handler, error) {
	compiled := make(map[string]*template.Template, len(sources))
	for name, src := range sources {
		tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(src)
		if err != nil {
			return nil, derrors.NewValidationError("templates/"+name, "failed to parse template", err)
		}
		compiled[name] = tmpl
	}

	return func(ctx *Context) ([]Suggestion, error) {
		name, _ := ctx.PrimaryConfig()
		tmpl, ok := compiled[name]
		if !ok {
			return nil, derrors.NewNotFoundError(name, "completion template not found")
		}

		data := templateData{
			Input:   ctx.Input(),
			Primary: name,
			Options: make(map[string]string),
			Args:    ctx.Args(),
		}
		for k, v := range ctx.Configs() {
			if v != nil {
				data.Options[k] = *v
			}
		}
		if ctx.Issuer() != nil {
			data.Issuer = ctx.Issuer().Name()
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("failed to render template %s: %w", name, err)
		}

		var out []Suggestion
		for _, line := range strings.Split(buf.String(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, Suggestion{Value: line})
			}
		}
		return out, nil
	}, nil
}

// ValuesHandler suggests a named static list, e.g. "@values:colors".
func ValuesHandler(lists map[string][]string) Handler {
	return func(ctx *Context) ([]Suggestion, error) {
		name, _ := ctx.PrimaryConfig()
		list, ok := lists[name]
		if !ok {
			return nil, derrors.NewNotFoundError(name, "completion value list not found")
		}
		return suggestionsOf(list...), nil
	}
}
