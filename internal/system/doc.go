// Package system holds the Linux console plumbing used when the overlay is
// drawn straight onto the framebuffer. It switches the active VT between
// text and graphics mode, hides its cursor and watches evdev for the exit key.
// On other platforms only a never-firing exit key source is provided.
package system
