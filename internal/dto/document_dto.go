package dto

type UploadDocumentResponse struct {
	FileName      string `json:"file_name"`
	FileId        string `json:"file_id"`
	VectorStoreId string `json:"vector_store_id"`
}

type ListDocumentsResponse struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}
