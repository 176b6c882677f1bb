/*
 * server runs a simulation in the background and serves it over http,
 * configured from the environment
 */
package main

import "github.com/suxatcode/gravity-particles/internal/app"

func main() {
	app.Run()
}
