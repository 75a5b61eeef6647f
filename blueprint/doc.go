// Package blueprint declares SEO fields and augments stored data against
// them.
//
// A Blueprint is an ordered list of Fields. Augmenting a data container
// against a blueprint yields a field.Mapping holding one Value per declared
// field, each bound to the fieldtype that turns its raw value into its
// presentational form. Section fields are UI grouping markers and always
// augment to nil.
//
// Page-level fields use the "seo_source" fieldtype, whose raw value may be
// one of the sentinels "@default", "@auto" or "@null":
//
//	@default  use the field default (the page-type default set value)
//	@auto     use the value of another field on the same container
//	@null     explicitly empty
package blueprint
