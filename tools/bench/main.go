// Command bench runs push/insert/erase workloads against vec.Vector and
// prints per-operation timings. With -listen it also serves wall-clock
// profiles on /debug/fgprof for inspecting long runs.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/felixge/fgprof"

	"github.com/gernest/vec"
)

func main() {
	var (
		n      = flag.Int("n", 1_000_000, "elements per workload")
		rounds = flag.Int("rounds", 3, "times to repeat each workload")
		listen = flag.String("listen", "", "serve /debug/fgprof on this address")
	)
	flag.Parse()

	if *listen != "" {
		http.Handle("/debug/fgprof", fgprof.Handler())
		go func() {
			if err := http.ListenAndServe(*listen, nil); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}()
	}

	for r := 0; r < *rounds; r++ {
		run("push", *n, pushWorkload)
		run("push/reserved", *n, reservedWorkload)
		run("insert/random", *n/100, insertWorkload)
		run("erase/random", *n/100, eraseWorkload)
	}
}

func run(name string, n int, f func(n int) error) {
	start := time.Now()
	if err := f(n); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
	el := time.Since(start)
	fmt.Printf("%-16s n=%-9d %12v %8.1f ns/op\n", name, n, el, float64(el.Nanoseconds())/float64(n))
}

func pushWorkload(n int) error {
	v := vec.New[uint64]()
	for i := 0; i < n; i++ {
		if _, err := v.Push(uint64(i)); err != nil {
			return err
		}
	}
	return nil
}

func reservedWorkload(n int) error {
	v := vec.New[uint64]()
	if err := v.Reserve(n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := v.Push(uint64(i)); err != nil {
			return err
		}
	}
	return nil
}

func insertWorkload(n int) error {
	rng := rand.New(rand.NewPCG(42, 42))
	v := vec.New[uint64]()
	for i := 0; i < n; i++ {
		if _, err := v.Insert(rng.IntN(v.Len()+1), rng.Uint64()); err != nil {
			return err
		}
	}
	return nil
}

func eraseWorkload(n int) error {
	v := vec.New[uint64]()
	if err := v.Reserve(n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := v.Push(uint64(i)); err != nil {
			return err
		}
	}
	rng := rand.New(rand.NewPCG(7, 7))
	for v.Len() > 0 {
		v.Erase(rng.IntN(v.Len()))
	}
	return nil
}
