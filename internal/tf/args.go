package tf

import (
	"strings"
)

const maskedArgument = "********"

// Credentials are passed to tf with -login. They are never written to logs.
type Credentials struct {
	Domain   string
	User     string
	Password string
}

// LoginName returns DOMAIN\user, or just the user when there is no domain.
func (c Credentials) LoginName() string {
	if c.Domain == "" {
		return c.User
	}
	return c.Domain + `\` + c.User
}

type argument struct {
	value  string
	secret bool
}

// ArgumentBuilder assembles the argv of a single tf invocation. Tokens are
// passed to the process as discrete arguments, never through a shell.
type ArgumentBuilder struct {
	args []argument
	dir  string
}

// NewArgumentBuilder starts an argument list with the given subcommand.
func NewArgumentBuilder(subcommand string) *ArgumentBuilder {
	return (&ArgumentBuilder{}).Add(subcommand)
}

// Add appends positional tokens.
func (b *ArgumentBuilder) Add(tokens ...string) *ArgumentBuilder {
	for _, t := range tokens {
		b.args = append(b.args, argument{value: t})
	}
	return b
}

// AddSwitch appends -name.
func (b *ArgumentBuilder) AddSwitch(name string) *ArgumentBuilder {
	return b.addSwitch(name, "", false)
}

// AddSwitchValue appends -name:value, or -name when value is empty.
func (b *ArgumentBuilder) AddSwitchValue(name, value string) *ArgumentBuilder {
	return b.addSwitch(name, value, false)
}

// AddSecretSwitch appends -name:value and masks it in String.
func (b *ArgumentBuilder) AddSecretSwitch(name, value string) *ArgumentBuilder {
	return b.addSwitch(name, value, true)
}

func (b *ArgumentBuilder) addSwitch(name, value string, secret bool) *ArgumentBuilder {
	if name == "" {
		panic("tf: empty switch name")
	}
	arg := "-" + name
	if value != "" {
		arg += ":" + value
	}
	b.args = append(b.args, argument{value: arg, secret: secret})
	return b
}

// AddCredentials appends -login:user,password as a secret switch.
func (b *ArgumentBuilder) AddCredentials(c Credentials) *ArgumentBuilder {
	return b.AddSecretSwitch("login", c.LoginName()+","+c.Password)
}

// SetWorkingDirectory sets the directory tf runs in.
func (b *ArgumentBuilder) SetWorkingDirectory(dir string) *ArgumentBuilder {
	b.dir = dir
	return b
}

// WorkingDirectory returns the directory tf runs in, or "" for the caller's.
func (b *ArgumentBuilder) WorkingDirectory() string {
	return b.dir
}

// Args returns the unmasked tokens, without the tool path.
func (b *ArgumentBuilder) Args() []string {
	out := make([]string, len(b.args))
	for i, a := range b.args {
		out[i] = a.value
	}
	return out
}

// Build returns the full argv with the tool path first.
func (b *ArgumentBuilder) Build(toolPath string) []string {
	return append([]string{toolPath}, b.Args()...)
}

// String renders the arguments for logging, with secrets masked.
func (b *ArgumentBuilder) String() string {
	parts := make([]string, len(b.args))
	for i, a := range b.args {
		if a.secret {
			parts[i] = maskedArgument
		} else {
			parts[i] = a.value
		}
	}
	return strings.Join(parts, " ")
}
