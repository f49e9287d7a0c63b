package main

import "github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/cmd/starwars/commands"

func main() {
	commands.Execute()
}
