// Package cli implements the interactive accessdoc shell.
//
// App owns all session-wide state: the session, the current document and
// both settings groups. Commands read that state and hand copies to the
// editor, the speech reader and the settings panel; changes come back
// through callbacks and are applied here.
package cli
