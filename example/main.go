// Command example demonstrates the basic Set[E] API.
package main

import (
	"fmt"

	"github.com/thebagchi/stripeset"
)

func main() {
	set := stripeset.New[string](stripeset.StringHasher{}, stripeset.StringEqualer{})

	fmt.Println("=== Basic Add/Contains/Remove ===")
	for _, word := range []string{"abc", "def", "ghi", "abc"} {
		added, err := set.Add(word)
		if err != nil {
			panic(err)
		}
		fmt.Printf("Add(%q) = %v\n", word, added)
	}
	fmt.Printf("Count: %d\n", set.Count())

	removed := set.Remove("abc")
	fmt.Printf("Remove(\"abc\") = %v, Count now: %d\n", removed, set.Count())

	fmt.Println("\n=== Iteration ===")
	for v := range set.All() {
		fmt.Printf("element: %s\n", v)
	}

	fmt.Println("\n=== Growth across the prime progression ===")
	big := stripeset.New[int](stripeset.NewSeededHasher[int](), stripeset.ComparableEqualer[int]{})
	for i := 0; i < 2000; i++ {
		if _, err := big.Add(i); err != nil {
			panic(err)
		}
	}
	stats := big.Stats()
	fmt.Printf("inserted 2000 ints: count=%d slots=%d resizes=%d\n", stats.Count, stats.Slots, stats.Resizes)

	fmt.Println("\n=== Example completed successfully! ===")
}
