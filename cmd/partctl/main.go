// Command partctl inspects and edits ESP partition table CSV files.
package main

func main() {
	execute()
}
