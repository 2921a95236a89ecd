package main

import "campus-chat/config"

func main() {
	config.RunServer()
}
