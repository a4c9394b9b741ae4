package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"

	_ "patrolx/docs"
	"patrolx/pkg/kv"
	"patrolx/pkg/osmparser"
	"patrolx/pkg/server/rest"
	"patrolx/pkg/server/rest/service"
	"patrolx/pkg/zone"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	mapFile    = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap pbf file for the street network")
	zoneFile   = flag.String("zones", "zones.json", "patrol zone config file")
	dbDir      = flag.String("db", "./patrolx-badger", "badger key-value store directory")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

//	@title			patrolx API
//	@version		1.0
//	@description	street patrol and delivery route optimization engine

//	@description	computes full street coverage patrol routes (chinese postman) and closed delivery tours (traveling salesman) over an openstreetmap road network

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	parser := osmparser.NewOsmParser()
	graph, err := parser.Parse(*mapFile)
	if err != nil {
		log.Fatal(err)
	}
	recordMemProfile(memprofile, "parse_street_graph")

	zones, err := zone.LoadZones(*zoneFile)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d patrol zones", len(zones))

	db, err := badger.Open(badger.DefaultOptions(*dbDir))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	if err := kvDB.BuildH3IndexedNodes(context.Background(), graph); err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:5000/swagger/doc.json"),
	))

	optimizerSvc := service.NewOptimizerService(graph, zones, kvDB)
	recordMemProfile(memprofile, "service_init")

	rest.OptimizerRouter(r, optimizerSvc, m)

	fmt.Printf("\npatrol & delivery route engine ready!!")
	fmt.Printf("\nserver started at %s\n", *listenAddr)

	log.Fatal(http.ListenAndServe(*listenAddr, r))
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		*memprofile = strings.Replace(*memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
