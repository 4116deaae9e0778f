// Package describe collects and renders an overview of a definitions file.
package describe

import (
	"sort"
	"strings"

	"github.com/NikitaCOEUR/tabctx/internal/command"
	"github.com/NikitaCOEUR/tabctx/internal/completion"
	"github.com/NikitaCOEUR/tabctx/internal/config"
	"github.com/NikitaCOEUR/tabctx/pkg/version"
)

// CollectParams contains the loaded pieces Collect reads from
type CollectParams struct {
	DefinitionsPath string
	Definitions     *config.Definitions
	Commands        map[string]*command.Registered
	Engine          *completion.Engine
}

// Collect gathers describe data from loaded definitions
func Collect(params CollectParams) *Data {
	data := &Data{
		DefinitionsPath: params.DefinitionsPath,
		Version:         version.Version,
		Commands:        make([]CommandInfo, 0, len(params.Commands)),
		Templates:       make([]string, 0),
		ValueLists:      make(map[string]int),
		Exec:            make(map[string]string),
	}

	if params.Engine != nil {
		data.Handlers = params.Engine.IDs()
	}

	if defs := params.Definitions; defs != nil {
		data.LogLevel = defs.LogLevel
		for name := range defs.Templates {
			data.Templates = append(data.Templates, name)
		}
		sort.Strings(data.Templates)
		for name, list := range defs.Values {
			data.ValueLists[name] = len(list)
		}
		for name, argv := range defs.Exec {
			data.Exec[name] = strings.Join(argv, " ")
		}
	}

	names := make([]string, 0, len(params.Commands))
	for name := range params.Commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := params.Commands[name]
		info := CommandInfo{
			Name:        cmd.Name(),
			Description: cmd.Description(),
		}
		for _, p := range cmd.Parameters() {
			info.Parameters = append(info.Parameters, ParameterInfo{
				Name:       p.Name,
				Type:       typeName(p),
				Optional:   p.Optional,
				Default:    p.Default,
				Completion: p.Completion,
				Known:      isKnown(params.Engine, p.Completion),
			})
		}
		data.Commands = append(data.Commands, info)
	}

	return data
}

// typeName maps a parameter type back to its definitions-file name
func typeName(p command.Parameter) string {
	for name, typ := range config.ParameterTypes {
		if typ == p.Type {
			return name
		}
	}
	if p.Type == nil {
		return "unknown"
	}
	return p.Type.String()
}

// isKnown reports whether a completion spec can be served by the engine
func isKnown(engine *completion.Engine, spec string) bool {
	if spec == "" {
		return true
	}
	id, _ := completion.ParseSpec(spec)
	if id == "" {
		return true
	}
	return engine != nil && engine.Has(id)
}
