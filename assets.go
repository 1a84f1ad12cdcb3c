// Package linkedroles provides embedded assets for the linked-roles service.
package linkedroles

import _ "embed"

// ConfirmationPage is served after a successful OAuth callback.
//
//go:embed web/linked.html
var ConfirmationPage []byte
