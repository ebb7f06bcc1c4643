package models

// UploadResult возвращается после успешной загрузки и содержит принятое имя файла.
type UploadResult struct {
	Filename string
	Size     int64
}
