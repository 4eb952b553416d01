package welcome

import "strings"

// Art returns the decorative welcome illustration: a steaming cup.
// Purely cosmetic; takes nothing, renders the same thing every time.
func Art() string {
	return strings.TrimSuffix(strings.TrimPrefix(`
      (  (
       )  )
    .________.
    |        |]
    \        /
     '------'
`, "\n"), "\n")
}
