package main

import (
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/clarete/abnfkit/uri"
)

func main() {
	ref := flag.String("ref", "", "URI-reference to parse (reads stdin if omitted)")
	base := flag.String("base", "", "resolve -ref against this base URI")
	flag.Parse()

	var src io.ReadSeeker
	if *ref != "" {
		src = strings.NewReader(*ref)
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("can't read stdin: %s", err.Error())
		}
		src = strings.NewReader(strings.TrimSpace(string(data)))
	}

	u, ok, err := uri.Parse(src)
	if err != nil {
		log.Fatalf("can't parse URI: %s", err.Error())
	}
	if !ok {
		log.Fatal("input does not match the URI-reference grammar")
	}

	if *base != "" {
		b, ok, err := uri.Parse(strings.NewReader(*base))
		if err != nil {
			log.Fatalf("can't parse base URI: %s", err.Error())
		}
		if !ok {
			log.Fatal("base does not match the URI-reference grammar")
		}
		u = u.Resolve(b)
	}

	if err := u.Write(os.Stdout); err != nil {
		log.Fatalf("can't write URI: %s", err.Error())
	}
	os.Stdout.WriteString("\n")
}
