// Package i18n resolves the response language for a request and renders the
// API's user-facing error messages in it.
package i18n

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// Message keys.
const (
	MsgValidation         = "error.validation"
	MsgUserExists         = "error.user_exists"
	MsgInvalidCredentials = "error.invalid_credentials"
	MsgUnauthenticated    = "error.unauthenticated"
	MsgInvoiceNotFound    = "error.invoice_not_found"
	MsgInvalidPayload     = "error.invalid_payload"
	MsgInternal           = "error.internal"
)

var messages = map[language.Tag]map[string]string{
	language.Japanese: {
		MsgValidation:         "必須項目が不足しています",
		MsgUserExists:         "このメールアドレスは既に登録されています",
		MsgInvalidCredentials: "メールアドレスまたはパスワードが正しくありません",
		MsgUnauthenticated:    "認証が必要です",
		MsgInvoiceNotFound:    "請求書が見つかりません",
		MsgInvalidPayload:     "リクエストの形式が正しくありません",
		MsgInternal:           "サーバー内部エラーが発生しました",
	},
	language.English: {
		MsgValidation:         "Required fields are missing",
		MsgUserExists:         "This email address is already registered",
		MsgInvalidCredentials: "Incorrect email address or password",
		MsgUnauthenticated:    "Authentication required",
		MsgInvoiceNotFound:    "Invoice not found",
		MsgInvalidPayload:     "Invalid request payload",
		MsgInternal:           "Internal server error",
	},
}

// Localizer holds one printer per supported language. The default language
// is always supported[0], which is what the matcher falls back to.
type Localizer struct {
	supported []language.Tag
	matcher   language.Matcher
	printers  map[language.Tag]*message.Printer
}

// New builds a Localizer whose fallback language is defaultLocale.
func New(defaultLocale string) (*Localizer, error) {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("i18n: parse default locale: %w", err)
	}
	base, _ := def.Base()

	supported := []language.Tag{}
	for _, tag := range []language.Tag{language.Japanese, language.English} {
		if b, _ := tag.Base(); b == base {
			supported = append([]language.Tag{tag}, supported...)
			continue
		}
		supported = append(supported, tag)
	}
	if b, _ := supported[0].Base(); b != base {
		return nil, fmt.Errorf("i18n: unsupported default locale %q", defaultLocale)
	}

	b := catalog.NewBuilder(catalog.Fallback(supported[0]))
	for tag, msgs := range messages {
		for key, text := range msgs {
			if err := b.SetString(tag, key, text); err != nil {
				return nil, fmt.Errorf("i18n: set %s/%s: %w", tag, key, err)
			}
		}
	}

	printers := make(map[language.Tag]*message.Printer, len(supported))
	for _, tag := range supported {
		printers[tag] = message.NewPrinter(tag, message.Catalog(b))
	}

	return &Localizer{
		supported: supported,
		matcher:   language.NewMatcher(supported),
		printers:  printers,
	}, nil
}

// Default returns the fallback language.
func (l *Localizer) Default() language.Tag {
	return l.supported[0]
}

// ResolveTag picks the language for r: the lang query parameter first, then
// Accept-Language, then the default.
func (l *Localizer) ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return l.Default()
	}

	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			if match, ok := l.match(tag); ok {
				return match
			}
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if match, ok := l.match(tags...); ok {
				return match
			}
		}
	}

	return l.Default()
}

func (l *Localizer) match(tags ...language.Tag) (language.Tag, bool) {
	_, idx, conf := l.matcher.Match(tags...)
	if conf == language.No {
		return language.Und, false
	}
	return l.supported[idx], true
}

// Message renders key in tag. Unknown tags use the default language.
func (l *Localizer) Message(tag language.Tag, key string) string {
	p, ok := l.printers[tag]
	if !ok {
		p = l.printers[l.Default()]
	}
	return p.Sprintf(key)
}

// Translate is ResolveTag followed by Message.
func (l *Localizer) Translate(r *http.Request, key string) string {
	return l.Message(l.ResolveTag(r), key)
}
