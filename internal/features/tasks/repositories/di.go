package tasks_repositories

var taskRepository = &TaskRepository{}
var subtaskRepository = &SubtaskRepository{}
var commentRepository = &CommentRepository{}

func GetTaskRepository() *TaskRepository {
	return taskRepository
}

func GetSubtaskRepository() *SubtaskRepository {
	return subtaskRepository
}

func GetCommentRepository() *CommentRepository {
	return commentRepository
}
