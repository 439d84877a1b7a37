// Package envfile converts between SecretSet and .env-style text.
//
// The syntax is deliberately narrow: UTF-8 text, one KEY=value pair per
// line, no quoting or escaping on output. Parsing is more forgiving (it
// accepts comments and quoted values, via godotenv), but serialization
// rejects any value the parser would read back differently ("=", newlines,
// "#", a leading quote, surrounding whitespace) rather than inventing an
// escaping scheme. Within that subset, parse(serialize(s)) == s holds for
// every SecretSet.
//
// Serialization sorts keys so repeated runs produce identical files.
package envfile
