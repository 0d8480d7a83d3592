// Package notification models the per-account inbox of the service desk.
// A Message is what the order engine wants a recipient to know; a
// Notification is that message stored for one recipient with a read flag.
package notification
