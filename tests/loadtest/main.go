package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 200
	numCourses   = 40
)

var schools = []string{"Example_University", "Test_College", "Sample_School"}

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
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

func main() {
	fmt.Println("=== ODH Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Users: %d | Courses: %d\n\n", numUsers, numCourses)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Cold cache, plain lookups that seed the user stats cache
	fmt.Println("\n--- Phase 1: Cold cache (plain user lookups) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGetUserCourses(rng, false)
	})

	// Phase 2: Enriched lookups fan out into course and roster fetches
	fmt.Println("\n--- Phase 2: Enriched load (60% enriched, 40% plain) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doGetUserCourses(rng, false)
		case r < 0.70:
			return doGetUserCourses(rng, true)
		case r < 0.85:
			return doGetActiveStaff(rng)
		default:
			return doGetUserStatus(rng)
		}
	})

	// Phase 3: Warm cache, full endpoint mix
	fmt.Println("\n--- Phase 3: Warm cache (full mix) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.25:
			return doGetUserCourses(rng, true)
		case r < 0.45:
			return doGetActiveStaff(rng)
		case r < 0.60:
			return doGetUserStatus(rng)
		case r < 0.75:
			return doGetCourseDetails(rng)
		case r < 0.90:
			return doGetCourseUsers(rng)
		default:
			return doGetHealth()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
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

	fmt.Printf("\n  %-30s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 96))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-30s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 96))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func randomUser(rng *rand.Rand) string {
	return fmt.Sprintf("Load_Test_User_%d", rng.Intn(numUsers)+1)
}

func randomCourse(rng *rand.Rand) (string, string) {
	school := schools[rng.Intn(len(schools))]
	return school, fmt.Sprintf("Course_%d_(Fall)", rng.Intn(numCourses)+1)
}

// okStatus accepts 404s: unknown users and courses are expected answers,
// not load test failures.
func okStatus(code int) bool {
	return code == 200 || code == 404
}

func doGet(endpoint, target string) result {
	start := time.Now()
	resp, err := httpClient.Get(target)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, !okStatus(resp.StatusCode)}
}

func doGetUserCourses(rng *rand.Rand, enrich bool) result {
	endpoint := "GET /users/{u}"
	target := baseURL + "/users/" + url.PathEscape(randomUser(rng))
	if enrich {
		endpoint = "GET /users/{u}?enrich"
		target += "?enrich=true"
	}
	return doGet(endpoint, target)
}

func doGetActiveStaff(rng *rand.Rand) result {
	target := baseURL + "/users/" + url.PathEscape(randomUser(rng)) + "/active-staff"
	if rng.Float64() < 0.5 {
		target += "?use_event_dates=true"
	}
	return doGet("GET /users/{u}/active-staff", target)
}

func doGetUserStatus(rng *rand.Rand) result {
	target := baseURL + "/users/" + url.PathEscape(randomUser(rng)) + "/status"
	return doGet("GET /users/{u}/status", target)
}

func doGetCourseDetails(rng *rand.Rand) result {
	school, slug := randomCourse(rng)
	target := baseURL + "/courses/" + url.PathEscape(school) + "/" + url.PathEscape(slug) + "?enrich=true"
	return doGet("GET /courses/{s}/{c}", target)
}

func doGetCourseUsers(rng *rand.Rand) result {
	school, slug := randomCourse(rng)
	target := baseURL + "/courses/" + url.PathEscape(school) + "/" + url.PathEscape(slug) + "/users"
	return doGet("GET /courses/{s}/{c}/users", target)
}

func doGetHealth() result {
	return doGet("GET /health", baseURL+"/health")
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
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
