// Package main provides the spatial kernel CLI.
//
// Usage:
//
//	spatial version
//	spatial kernels
//	spatial eval -config model.yaml
//	spatial serve -addr :50051
//	spatial catalog put -db catalog.db -config model.yaml
//	spatial catalog list -db catalog.db
//	spatial catalog show -db catalog.db -name conn_prob
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"google.golang.org/grpc"

	"github.com/born-ml/spatial/internal/batch"
	"github.com/born-ml/spatial/internal/catalog"
	"github.com/born-ml/spatial/internal/config"
	"github.com/born-ml/spatial/internal/distribution"
	"github.com/born-ml/spatial/internal/kernel"
	"github.com/born-ml/spatial/internal/service"
)

const version = "v0.1.0-dev"

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("spatial: ")

	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

const usage = `usage: spatial <command> [flags]

Commands:
  version    Show version
  kernels    List available kernel tags
  eval       Evaluate a model description (-config)
  serve      Serve the evaluator over gRPC (-addr)
  catalog    Manage parameter records (put | list | show)`

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(out, "spatial %s\n", version)
		return nil
	case "kernels":
		return runKernels(out)
	case "eval":
		return runEval(args[1:], out)
	case "serve":
		return runServe(args[1:])
	case "catalog":
		return runCatalog(args[1:], out)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func runKernels(out io.Writer) error {
	reg := kernel.Default()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tINPUTS\tPARAMS")
	for _, k := range reg.Kinds() {
		fmt.Fprintf(w, "%s\t%d\t%v\n", k, k.Arity(), k.ParamNames())
	}
	if reg.Capabilities().SpecialFunctions == nil {
		fmt.Fprintf(w, "(%s unavailable: built without special functions)\n", kernel.TagGamma)
	}
	return w.Flush()
}

func runEval(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	path := fs.String("config", "", "model description (YAML)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("%w: eval needs -config", errUsage)
	}

	m, err := config.Load(*path)
	if err != nil {
		return err
	}
	ev, err := m.Build(distribution.NewBuilder(kernel.Default()))
	if err != nil {
		return err
	}

	d := batch.NewDriver(batch.WithConfig(ev.Parallel))
	values, err := d.EvaluateAll(ev.Fields, ev.Samples)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for j, name := range ev.Names {
		fmt.Fprintf(w, "# %s = %s\n", name, ev.Fields[j].Spec())
		for i, s := range ev.Samples {
			fmt.Fprintf(w, "%d\t%v\t%.6g\n", i, []float64(s), values[j][i])
		}
		sum := batch.Summarize(values[j])
		fmt.Fprintf(w, "n=%d\tmin=%.6g\tmax=%.6g\tmean=%.6g\n", sum.Count, sum.Min, sum.Max, sum.Mean)
	}
	return w.Flush()
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":50051", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", *addr, err)
	}
	s := grpc.NewServer()
	service.Register(s, service.NewServer(service.WithLogger(log.Default())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Printf("shutting down")
		s.GracefulStop()
	}()

	log.Printf("serving %s on %s", service.ServiceName, lis.Addr())
	return s.Serve(lis)
}

func runCatalog(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: catalog needs put, list or show", errUsage)
	}
	switch args[0] {
	case "put", "list", "show":
	default:
		return fmt.Errorf("%w: unknown catalog command %q", errUsage, args[0])
	}
	fs := flag.NewFlagSet("catalog "+args[0], flag.ContinueOnError)
	dbPath := fs.String("db", "spatial.db", "catalog database")
	cfgPath := fs.String("config", "", "model description to record (put)")
	name := fs.String("name", "", "record name (show)")
	jsonOut := fs.Bool("json", false, "output as JSON (show)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	store, err := catalog.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := context.Background()

	switch args[0] {
	case "put":
		return catalogPut(ctx, store, *cfgPath, out)
	case "list":
		return catalogList(ctx, store, out)
	}
	return catalogShow(ctx, store, *name, *jsonOut, out)
}

func catalogPut(ctx context.Context, store *catalog.Store, path string, out io.Writer) error {
	if path == "" {
		return fmt.Errorf("%w: catalog put needs -config", errUsage)
	}
	m, err := config.Load(path)
	if err != nil {
		return err
	}
	ev, err := m.Build(distribution.NewBuilder(kernel.Default()))
	if err != nil {
		return err
	}
	entries := make([]catalog.Entry, len(ev.Fields))
	for j, f := range ev.Fields {
		entries[j] = catalog.Entry{Name: ev.Names[j], Field: f}
	}
	recs, err := store.PutAll(ctx, entries)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Fprintf(out, "%s\t%s\n", rec.ID, rec.Name)
	}
	return nil
}

func catalogList(ctx context.Context, store *catalog.Store, out io.Writer) error {
	recs, err := store.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tFIELD")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Spec)
	}
	return w.Flush()
}

func catalogShow(ctx context.Context, store *catalog.Store, name string, jsonOut bool, out io.Writer) error {
	if name == "" {
		return fmt.Errorf("%w: catalog show needs -name", errUsage)
	}
	rec, err := store.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	fmt.Fprintf(out, "id:      %s\nname:    %s\ncreated: %s\nfield:   %s\n",
		rec.ID, rec.Name, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Spec)
	return nil
}
