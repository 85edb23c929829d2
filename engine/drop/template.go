package drop

import (
	"strconv"
	"strings"
)

// Template tokens for display names and lore.
const (
	TokenRecipient = "%p"
	TokenVictim    = "%v"
	TokenDrop      = "%d"
	TokenTool      = "%t"
	TokenQuantity  = "%q"
)

// Vars are the values substituted into templates, in token order.
type Vars struct {
	Recipient string
	Victim    string
	Drop      string
	Tool      string
	Quantity  int
}

func (v Vars) replacer() *strings.Replacer {
	return strings.NewReplacer(
		TokenRecipient, v.Recipient,
		TokenVictim, v.Victim,
		TokenDrop, v.Drop,
		TokenTool, v.Tool,
		TokenQuantity, strconv.Itoa(v.Quantity),
	)
}

// Expand substitutes every token in s.
func (v Vars) Expand(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	return v.replacer().Replace(s)
}
