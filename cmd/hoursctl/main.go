// hoursctl is a command-line companion to the hours-tracker server: it
// reads the same SQLite database and prints period reports or CSV exports.
package main

func main() {
	Execute()
}
