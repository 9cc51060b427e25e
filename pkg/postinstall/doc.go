// Package postinstall holds the best-effort steps that run after the core
// install completes: downloading the wrapper binary for the current
// platform, extending the shell PATH, and installing global npm packages.
// Nothing here participates in rollback, and nothing here can fail a run;
// every error surfaces as a user-visible warning and an audit entry.
package postinstall
