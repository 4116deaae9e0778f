package shell

import _ "embed"

// Completion scripts compiled into the binary

//go:embed templates/bash.tmpl
var bashTemplate string

//go:embed templates/zsh.tmpl
var zshTemplate string

// commandsPlaceholder is replaced by the space-separated command names
const commandsPlaceholder = "__TABCTX_COMMANDS__"
