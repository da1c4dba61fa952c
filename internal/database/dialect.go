package database

import "fmt"

// Dialect holds the SQL fragments that differ between the supported
// drivers. Everything else the repositories send is portable.
type Dialect struct {
	Name string
}

func dialectFor(name string) Dialect {
	return Dialect{Name: name}
}

// AsText renders a numeric column as text for substring matching.
func (d Dialect) AsText(column string) string {
	if d.Name == "mysql" {
		return fmt.Sprintf("CAST(%s AS CHAR)", column)
	}
	return fmt.Sprintf("CAST(%s AS TEXT)", column)
}

// DateAsText renders a DATE column as YYYY-MM-DD.
func (d Dialect) DateAsText(column string) string {
	if d.Name == "mysql" {
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d')", column)
	}
	return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM-DD')", column)
}
