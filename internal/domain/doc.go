// Package domain contains the core business entities of the application:
// users and the tasks they own. Entities validate themselves and carry no
// persistence or transport concerns; those live in the store and api layers.
package domain
