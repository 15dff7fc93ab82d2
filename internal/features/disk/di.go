package disk

var diskService = &DiskService{}

var diskController = &DiskController{
	diskService: diskService,
}

func GetDiskService() *DiskService {
	return diskService
}

func GetDiskController() *DiskController {
	return diskController
}
