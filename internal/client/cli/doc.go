// Package cli provides the interactive product-service command-line client.
//
// The client logs in first, then shows a numbered menu:
//
//	1  list products
//	2  fetch one product by id and keep it in memory
//	3  add a product
//	4  show the kept product
//	5  save the kept product to a JSON file
//	9  log out
//	0  exit
//
// Every server answer is printed with its status code and body, pretty-printed
// when the body is JSON. At most one product is kept at a time. See App.Run.
package cli
