// Package contact builds the outbound WhatsApp and tel: deep links that
// carry all purchase intent out of the gallery.
package contact
