// Package redis implements the selection and server URL stores on top of
// go-redis. Keys mirror the browser storage keys of the original client
// (teams_selected_user, teams_server_url), suffixed with the client ID.
package redis
