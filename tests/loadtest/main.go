package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	numWorkers   = 20
	testDuration = 10 * time.Second
)

var (
	baseURL    = "http://127.0.0.1:8080"
	categories = []string{"maintenance", "repair", "diagnostics"}
	conditions = []string{"all", "used", "reconditioned"}
	makes      = []string{"Toyota", "Honda", "Ford", "Subaru", "Mazda"}
	statuses   = []string{"in-progress", "completed", "cancelled"}
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// created appointment ids, shared by workers so status updates hit real records
var appointments struct {
	sync.Mutex
	ids []string
}

func main() {
	flag.StringVar(&baseURL, "url", baseURL, "garage server base url")
	flag.Parse()

	fmt.Println("=== Garage Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Target: %s\n\n", numWorkers, testDuration, baseURL)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			drain(resp)
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Catalog reads ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		switch rng.Intn(3) {
		case 0:
			return doGetServices(rng)
		case 1:
			return doGet("/testimonials")
		default:
			return doGet("/time-slots")
		}
	})

	fmt.Println("\n--- Phase 2: Booking flow (60% create, 40% status update) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.60 {
			return doCreateAppointment(rng)
		}
		return doUpdateStatus(rng)
	})

	fmt.Println("\n--- Phase 3: Mixed inventory load (20% write, 80% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doCreateVehicle(rng)
		case r < 0.60:
			return doGetVehicles(rng)
		case r < 0.80:
			return doGet("/appointments?userId=1")
		default:
			return doGetServices(rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 1000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-30s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "Avg", "P50", "P95")
	fmt.Println("  " + strings.Repeat("-", 80))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-30s %8d %6d %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)), fmtDur(percentile(s.latencies, 0.95)))
	}

	if totalOps == 0 {
		return
	}
	fmt.Println("  " + strings.Repeat("-", 80))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func send(method, path, label string, body any, want int) (result, []byte) {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return result{label, 0, 0, true}, nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{label, 0, lat, true}, nil
	}
	defer resp.Body.Close()
	payload, _ := io.ReadAll(resp.Body)
	return result{label, resp.StatusCode, lat, resp.StatusCode != want}, payload
}

func doGet(path string) result {
	label := "GET " + strings.SplitN(path, "?", 2)[0]
	r, _ := send(http.MethodGet, path, label, nil, http.StatusOK)
	return r
}

func doGetServices(rng *rand.Rand) result {
	if rng.Intn(2) == 0 {
		return doGet("/services")
	}
	return doGet("/services?category=" + categories[rng.Intn(len(categories))])
}

func doGetVehicles(rng *rand.Rand) result {
	return doGet("/vehicles?condition=" + conditions[rng.Intn(len(conditions))])
}

func doCreateVehicle(rng *rand.Rand) result {
	body := map[string]any{
		"year":      2010 + rng.Intn(15),
		"make":      makes[rng.Intn(len(makes))],
		"model":     "Load",
		"price":     5000 + rng.Intn(20000),
		"mileage":   rng.Intn(150000),
		"condition": conditions[1+rng.Intn(2)],
		"features":  []string{"Bluetooth"},
	}
	r, _ := send(http.MethodPost, "/vehicles", "POST /vehicles", body, http.StatusCreated)
	return r
}

func doCreateAppointment(rng *rand.Rand) result {
	body := map[string]any{
		"userId":      "1",
		"serviceId":   "1",
		"serviceName": "Oil Change",
		"date":        time.Now().AddDate(0, 0, 1+rng.Intn(30)).Format("2006-01-02"),
		"time":        "9:00 AM",
		"vehicleInfo": map[string]any{"year": 2018, "make": makes[rng.Intn(len(makes))], "model": "Load"},
	}
	r, payload := send(http.MethodPost, "/appointments", "POST /appointments", body, http.StatusCreated)
	if r.err {
		return r
	}
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if json.Unmarshal(payload, &created) == nil && created.Data.ID != "" {
		appointments.Lock()
		appointments.ids = append(appointments.ids, created.Data.ID)
		appointments.Unlock()
	}
	return r
}

func doUpdateStatus(rng *rand.Rand) result {
	appointments.Lock()
	if len(appointments.ids) == 0 {
		appointments.Unlock()
		return doCreateAppointment(rng)
	}
	id := appointments.ids[rng.Intn(len(appointments.ids))]
	appointments.Unlock()

	body := map[string]string{"status": statuses[rng.Intn(len(statuses))]}
	r, _ := send(http.MethodPut, "/appointments/"+id+"/status", "PUT /appointments/{id}/status", body, http.StatusOK)
	// random target statuses often violate the forward-only lifecycle
	if r.status == http.StatusConflict {
		r.err = false
	}
	return r
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
