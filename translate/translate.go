// Package translate formats user-facing messages for the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DefaultLocale is used when the host reports no locale at all.
const DefaultLocale = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

func loadPrinter() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("pagecpu: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{DefaultLocale}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// Printer returns the message printer for the host locale.
func Printer() *message.Printer {
	printerOnce.Do(loadPrinter)
	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
