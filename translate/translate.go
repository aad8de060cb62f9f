// Package translate localizes the user-visible text of mmreg.
//
// Format strings are written in en-US Sprintf() form and looked up in the
// message catalog of the first locale reported by the host.
package translate

import (
	"fmt"
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("mmreg: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintf translates an en-US Sprintf() format and writes it to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	n, err = printer.Fprintf(w, key, args...)
	return
}

// Errorf translates the message of an error built with fmt.Errorf.
//
// The %w verb is not understood by the message printer, so the wrapped
// error is kept aside and only the remaining arguments are translated.
func Errorf(wrapped error, key message.Reference, args ...any) error {
	return fmt.Errorf("%s: %w", printer.Sprintf(key, args...), wrapped)
}
