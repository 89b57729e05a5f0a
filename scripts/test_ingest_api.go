package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
)

const (
	baseURL = "http://localhost:3000/api"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	token := os.Getenv("API_TOKEN")
	pdfPath := os.Getenv("PDF_PATH")
	if token == "" || pdfPath == "" {
		color.Red("Set API_TOKEN and PDF_PATH before running")
		os.Exit(1)
	}

	color.Cyan("Starting Ingestion Pipeline API Test\n")

	color.Yellow("\n1. Create University")
	resp, body, err := sendRequest("POST", "/university/v1", token, map[string]string{
		"name":    "Test University",
		"country": "Testland",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var uniRes struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	json.Unmarshal(body, &uniRes)

	color.Yellow("\n2. Create Course")
	resp, body, err = sendRequest("POST", "/course/v1", token, map[string]string{
		"university_id": uniRes.Data.Id,
		"name":          "Calculus I",
		"code":          "MATH101",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var courseRes struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	json.Unmarshal(body, &courseRes)

	color.Yellow("\n3. Check Quota Status")
	resp, body, _ = sendRequest("GET", "/usage/v1/status", token, nil)
	color.Green("Status: %s", resp.Status)
	var statusRes map[string]interface{}
	json.Unmarshal(body, &statusRes)
	prettyPrint(statusRes)

	color.Yellow("\n4. Ingest PDF (streaming)")
	if err := streamIngest(token, courseRes.Data.Id, pdfPath); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	color.Yellow("\n5. Course Outline")
	resp, body, _ = sendRequest("GET", "/course/v1/"+courseRes.Data.Id+"/outline", token, nil)
	color.Green("Status: %s", resp.Status)
	var outlineRes map[string]interface{}
	json.Unmarshal(body, &outlineRes)
	prettyPrint(outlineRes)

	color.Cyan("\nDone")
}

func streamIngest(token, courseId, pdfPath string) error {
	file, err := os.Open(pdfPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", pdfPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	writer.WriteField("course_id", courseId)
	writer.Close()

	req, err := http.NewRequest("POST", baseURL+"/document/v1/ingest", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %s: %s", resp.Status, string(body))
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var event map[string]interface{}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
			continue
		}
		switch event["type"] {
		case "status":
			color.Cyan("  stage: %v", event["stage"])
		case "item":
			color.White("  item %v", event["index"])
		case "batch_saved":
			color.Green("  batch saved: %v", event["chunk_ids"])
		case "error":
			color.Red("  error: %v", event["message"])
		case "complete":
			color.Green("  complete: %v items", event["count"])
		}
	}
	return scanner.Err()
}
