// Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The jtypesdump command loads a declaration graph from a fixture file
// and prints the result of running one type-algebra operation against
// it. It plays the role jadep plays for tools_jvm_autodeps: a thin
// flag-parsing main that wires a library's public entry point to a
// file on disk and prints the outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-jtypes/jtypes"
	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/jtypesfixture"
)

var (
	fixturePath = flag.String("fixture", "", "path to a YAML declaration-graph fixture (required)")
	op          = flag.String("op", "toString", "operation to run: toString, erasure, isSubtype, contains, capture, resolve")
	typeA       = flag.String("a", "", "first type reference, in fixture type-reference syntax")
	typeB       = flag.String("b", "", "second type reference (isSubtype, contains, resolve's target declaration)")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *fixturePath == "" || *typeA == "" {
		log.Fatalf("jtypesdump: -fixture and -a are required")
	}

	data, err := os.ReadFile(*fixturePath)
	if err != nil {
		log.Fatalf("jtypesdump: %v", err)
	}

	loader, err := jtypesfixture.NewLoader(data)
	if err != nil {
		log.Fatalf("jtypesdump: %v", err)
	}
	engine := jtypes.New(loader)
	ctx := context.Background()

	a, err := loader.ParseType(ctx, *typeA)
	if err != nil {
		log.Fatalf("jtypesdump: parsing -a: %v", err)
	}

	result, err := run(ctx, engine, loader, *op, a, *typeB)
	if err != nil {
		log.Fatalf("jtypesdump: %v", err)
	}
	fmt.Println(result)
}

func run(ctx context.Context, e *jtypes.Engine, l *jtypesfixture.Loader, op string, a types.Type, bRef string) (string, error) {
	switch op {
	case "toString":
		return e.String(a)

	case "erasure":
		erased, err := e.Erasure(a)
		if err != nil {
			return "", err
		}
		return e.String(erased)

	case "isSubtype":
		b, err := requireB(ctx, l, bRef)
		if err != nil {
			return "", err
		}
		ok, err := e.IsSubtype(ctx, a, b)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", ok), nil

	case "contains":
		b, err := requireB(ctx, l, bRef)
		if err != nil {
			return "", err
		}
		ok, err := e.Contains(ctx, a, b)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", ok), nil

	case "capture":
		d, ok := a.(*types.Declared)
		if !ok {
			return "", fmt.Errorf("capture requires a Declared type, got %T", a)
		}
		captured, err := e.Capture(ctx, d)
		if err != nil {
			return "", err
		}
		return e.String(captured)

	case "resolve":
		if bRef == "" {
			return "", fmt.Errorf("resolve requires -b naming the target declaration")
		}
		target, err := l.Declare(ctx, bRef)
		if err != nil {
			return "", err
		}
		args, reachable, err := e.ResolveActualTypeArguments(ctx, target, a)
		if err != nil {
			return "", err
		}
		if !reachable {
			return "no projection", nil
		}
		parts := make([]string, len(args))
		for i, arg := range args {
			s, err := e.String(arg)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return fmt.Sprintf("%v", parts), nil

	default:
		return "", fmt.Errorf("unknown -op %q", op)
	}
}

func requireB(ctx context.Context, l *jtypesfixture.Loader, bRef string) (types.Type, error) {
	if bRef == "" {
		return nil, fmt.Errorf("this operation requires -b")
	}
	return l.ParseType(ctx, bRef)
}
