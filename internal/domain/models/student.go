package models

import "strings"

const googleContentHost = "https://lh3.googleusercontent.com/d/"

// Student is a roster row.
type Student struct {
	Enrollment string `json:"enrollment"`
	Name       string `json:"name"`
	Section    string `json:"section"`
	Course     string `json:"course"`
	ImageURL   string `json:"image_url"`
}

// DirectPhotoURL converts a Google Drive sharing link into a link that can be used
// directly in an <img> tag. Other URLs are returned unchanged.
func DirectPhotoURL(url string) string {
	if strings.Contains(url, "drive.google.com") && strings.Contains(url, "id=") {
		id := strings.SplitN(strings.SplitN(url, "id=", 2)[1], "&", 2)[0]
		return googleContentHost + id
	}
	if strings.Contains(url, "/file/d/") {
		id := strings.SplitN(strings.SplitN(url, "/file/d/", 2)[1], "/", 2)[0]
		return googleContentHost + id
	}
	return url
}
