package messages

const (
	BadStatusCodeMsg = "API returned status code %d on URL %s"
	FailedToParseMsg = "failed to parse API response"
	RequestFailedMsg = "API request failed on URL %s"

	LakeReadFailedMsg  = "couldn't read %s from the data lake"
	LakeWriteFailedMsg = "couldn't write %s to the data lake"
)
