package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sir_venger/step_drop/pkg/stepclient"
)

const (
	addrEnv = "STEP_DROP_ADDR"
)

func main() {
	addr := flag.String("addr", envString(addrEnv, stepclient.DefaultBaseURL), "server base URL")
	timeout := flag.Duration("timeout", stepclient.DefaultTimeout, "request timeout")
	quiet := flag.Bool("quiet", false, "do not draw the progress bar")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <file.step|file.stp>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		log.Fatal(err)
	}

	name := filepath.Base(path)
	if err = stepclient.ValidateFile(name, info.Size()); err != nil {
		log.Fatalf("%s: %v", name, err)
	}

	opts := []stepclient.Option{stepclient.WithTimeout(*timeout)}
	if !*quiet {
		opts = append(opts, stepclient.WithProgress(os.Stderr))
	}
	cli := stepclient.New(*addr, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err = cli.Health(healthCtx); err != nil {
		log.Fatalf("server %s is not reachable: %v", *addr, err)
	}

	res, err := cli.Upload(ctx, name, f, info.Size())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("uploaded %s (%s)\n", res.Filename, stepclient.FormatFileSize(info.Size()))
}

// envString возвращает значение переменной окружения либо дефолт.
func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
