package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tuannm99/pagebuf/internal/bufmgr"
	"github.com/tuannm99/pagebuf/internal/config"
	"github.com/tuannm99/pagebuf/internal/snapshot"
	"github.com/tuannm99/pagebuf/internal/storage"
)

func main() {
	cfgPath := "pagebuf.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := os.MkdirAll(cfg.Storage.Dir, storage.FileMode0755); err != nil {
		log.Fatalf("create storage dir: %v", err)
	}
	f, err := storage.Open(cfg.PageFilePath())
	if err != nil {
		log.Fatalf("open page file: %v", err)
	}
	defer f.Close()

	mgr := bufmgr.NewBufMgr(cfg.Pool.Size)
	defer mgr.Close()

	pageNo, page, err := mgr.AllocPage(f)
	if err != nil {
		log.Fatalf("alloc page: %v", err)
	}
	if _, ok := page.InsertTuple([]byte("hello pagebuf")); !ok {
		log.Fatal("page unexpectedly full")
	}
	if err := mgr.UnpinPage(f, pageNo, true); err != nil {
		log.Fatalf("unpin: %v", err)
	}

	page, err = mgr.ReadPage(f, pageNo)
	if err != nil {
		log.Fatalf("read page: %v", err)
	}
	tup, _ := page.ReadTuple(0)
	fmt.Printf("page %d slot 0: %s\n", pageNo, tup)
	if err := mgr.UnpinPage(f, pageNo, false); err != nil {
		log.Fatalf("unpin: %v", err)
	}

	fmt.Print(mgr.String())

	if err := mgr.FlushFile(f); err != nil {
		log.Fatalf("flush: %v", err)
	}

	if cfg.Snapshot.Enabled {
		if err := snapshot.Write(cfg.PageFilePath(), cfg.Snapshot.Path); err != nil {
			log.Fatalf("snapshot: %v", err)
		}
		fmt.Println("snapshot written to", cfg.Snapshot.Path)
	}
}
