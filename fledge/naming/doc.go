// Package naming derives the case forms of a scaffolded name.
//
// # Overview
//
// Every generator in hatch works from a single raw name such as "user auth",
// "userAuth" or "user_auth". ToCases splits that name into words once and
// derives the forms templates need:
//
//	c := naming.ToCases("userAuth")
//	c.Pascal // UserAuth
//	c.Camel  // userAuth
//	c.Kebab  // user-auth
//	c.Snake  // user_auth
//	c.Lower  // user auth
//
// The result does not depend on how the input was written: "user auth",
// "UserAuth", "user-auth" and "user_auth" all produce the same Cases.
//
// # Word splitting
//
// A boundary is inserted between a lowercase letter or digit and a following
// uppercase letter, runs of '-' and '_' act as separators, and whitespace
// separates words. Digits never split on their own, so "api2Client" becomes
// the words "api2" and "client".
//
// # Pluralization
//
// Pluralize implements the common English rules used by the plural template
// helper.
package naming
