/*
Package main runs end-to-end specs against a deployed grid proxy.

The proxy and a selenium grid must already be running; nothing is started
here. Specs that change grid state are skipped unless -allow-write is set.

	go run ./test/e2e -proxy-url http://localhost:31590 -grid-url http://selenium-hub:4444

# Flags

	-proxy-url    proxy root url (default http://localhost:31590)
	-grid-url     grid url the proxy was started with, checked against /status
	-timeout      timeout of a single call (default 10s)
	-session-id   active session used for the VNC token check
	-allow-write  enable specs that kill sessions
*/
package main
