// Package locale normalizes site locale identifiers into BCP-47 tags.
//
// Site configuration tends to carry POSIX-style locales such as "de_CH" or
// "en_US.UTF-8". Every locale emitted by the cascade (the locale key,
// hreflang entries) goes through Parse so consumers see one format.
package locale
