// Command redstringctl maintains the redstring database.
//
// Usage:
//
//	redstringctl migrate
//	redstringctl import-cfb <export.csv>
//	redstringctl import-annotations
//	redstringctl seed-categories <categories.yaml>
//
// Settings come from the environment and an optional .env file.
package main

func main() {
	Execute()
}
