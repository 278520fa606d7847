// Package naming implements the standard field name grammar shared by the
// mapping tool and the card data resolver: "{type}_{format...}_{capitalization?}".
// The literal vocabulary is persisted in operator mapping stores, so the
// strings handled here are bit-exact contracts, not suggestions.
package naming

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-cardgen/pkg/model"
)

// CustomSentinel is the standardFieldName value marking a literal override:
// the mapping's customValue is used verbatim and the grammar is bypassed.
// The exact string is persisted externally and must never change.
const CustomSentinel = "custom static text"

// Option customises resolution behaviour.
type Option func(*config)

type config struct {
	strict bool
}

// Strict makes unknown field types, composite tokens, and capitalization
// keywords resolution errors instead of silent no-ops. The permissive default
// matches what operators' existing mapping stores rely on; strict mode is an
// opt-in validation aid only.
func Strict() Option {
	return func(c *config) {
		c.strict = true
	}
}

// Resolve evaluates a standard field name against a user record and returns
// either a text value or an image reference. Unknown tokens are skipped and
// unknown field types resolve to an empty string unless Strict is supplied.
func Resolve(fieldName string, user model.UserData, opts ...Option) (model.Value, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	segments := strings.Split(fieldName, "_")
	base := segments[0]
	rest := segments[1:]

	// The capitalization keyword is recognised by set membership, never by
	// position alone, so a trailing format token can't misparse as one.
	capz := capNone
	if len(rest) > 0 {
		if c, ok := capitalizations[strings.ToLower(rest[len(rest)-1])]; ok {
			capz = c
			rest = rest[:len(rest)-1]
		}
	}

	key := strings.ToLower(base)

	if source, ok := imageFields[key]; ok {
		// Image types ignore formatting and capitalization outright.
		path := source(user)
		if path == "" {
			return model.TextValue(""), nil
		}
		return model.NewImageValue(path), nil
	}

	if key == "fullname" {
		composed, err := composeFullName(rest, user, cfg)
		if err != nil {
			return nil, err
		}
		return model.TextValue(applyCapitalization(capz, composed)), nil
	}

	if getter, ok := scalarFields[key]; ok {
		return model.TextValue(applyCapitalization(capz, getter(user))), nil
	}

	if cfg.strict {
		return nil, fmt.Errorf("naming: unknown field type %q in %q", base, fieldName)
	}
	return model.TextValue(""), nil
}

// ResolveMapping evaluates a persisted field mapping, honouring the custom
// sentinel before consulting the grammar.
func ResolveMapping(m model.FieldMapping, user model.UserData, opts ...Option) (model.Value, error) {
	if m.StandardFieldName == CustomSentinel {
		return model.TextValue(m.CustomValue), nil
	}
	return Resolve(m.StandardFieldName, user, opts...)
}

// composeFullName concatenates the format tokens in order. A single space
// separates adjacent tokens except around "comma", which attaches to the
// preceding token with no leading space. Unknown tokens are skipped silently
// (or rejected in strict mode); the result is trimmed before capitalization.
func composeFullName(tokens []string, user model.UserData, cfg config) (string, error) {
	var sb strings.Builder
	for _, raw := range tokens {
		token, ok := compositeTokens[strings.ToLower(raw)]
		if !ok {
			if cfg.strict {
				return "", fmt.Errorf("naming: unknown fullName token %q", raw)
			}
			continue
		}

		if token == tokenComma {
			sb.WriteString(",")
			continue
		}

		part := compositePart(token, user)
		if part == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(part)
	}
	return strings.TrimSpace(sb.String()), nil
}

func compositePart(token compositeToken, user model.UserData) string {
	switch token {
	case tokenFirst:
		return user.FirstName
	case tokenLast:
		return user.LastName
	case tokenMiddleName:
		return user.MiddleName
	case tokenMiddleInitial:
		name := strings.TrimSpace(user.MiddleName)
		if name == "" {
			return ""
		}
		return string([]rune(name)[0]) + "."
	default:
		return ""
	}
}

func applyCapitalization(c capitalization, s string) string {
	switch c {
	case capUpper:
		return strings.ToUpper(s)
	case capLower:
		return strings.ToLower(s)
	case capTitle:
		words := strings.Split(s, " ")
		for i, word := range words {
			if word == "" {
				continue
			}
			runes := []rune(strings.ToLower(word))
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
			words[i] = string(runes)
		}
		return strings.Join(words, " ")
	default:
		return s
	}
}
